package scraper

import (
	"fmt"
	"strings"
)

// row is one line of a statistics table: user name and score cell text.
type row struct {
	user  string
	score string
}

// statsPage renders a page shaped like the site's score listing,
// including the layout table the site wraps around #content.
func statsPage(rows ...row) []byte {
	var b strings.Builder
	b.WriteString(`<html><body><table id="layout" width="100%"><tr><td>sidebar</td><td>
<div id="content"><table class="table-recently-updated" width="100%" border="0" cellpadding="0" cellspacing="0">
<tr><td class="borderClass" width="50"></td><td class="borderClass">Member</td><td class="borderClass ac">Score</td><td class="borderClass ac">Status</td><td class="borderClass ac">Eps Seen</td></tr>`)
	for _, r := range rows {
		fmt.Fprintf(&b, `
<tr>
  <td class="borderClass"><div class="picSurround"><a href="https://myanimelist.net/profile/%[1]s" class="image-member"><img src="x.jpg"></a></div></td>
  <td class="borderClass"><a href="/profile/%[1]s">%[1]s</a></td>
  <td class="borderClass ac">%[2]s</td>
  <td class="borderClass ac">Completed</td>
  <td class="borderClass ac">26 / 26</td>
</tr>`, r.user, r.score)
	}
	b.WriteString(`</table></div>
</td></tr></table></body></html>`)
	return []byte(b.String())
}
