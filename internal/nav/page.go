package nav

import "strings"

// PageID names a logical page of the app.
type PageID string

const (
	PageTitle      PageID = "title"
	PageNotice     PageID = "notice"
	PageWelcome    PageID = "welcome"
	PageCatalog    PageID = "catalog"
	PageTaskDetail PageID = "taskDetail"
	PageEditTask   PageID = "editTask"
	PageHelp       PageID = "help"
)

// Address tokens are what appears in page=...; they predate the page ids and
// are kept so old links keep working.
var tokenPages = map[string]PageID{
	"title":     PageTitle,
	"notice":    PageNotice,
	"welcome":   PageWelcome,
	"main":      PageCatalog,
	"task":      PageTaskDetail,
	"edit_task": PageEditTask,
	"help":      PageHelp,
}

var pageTokens = func() map[PageID]string {
	out := make(map[PageID]string, len(tokenPages))
	for tok, p := range tokenPages {
		out[p] = tok
	}
	return out
}()

// Pages lists every page in onboarding order.
func Pages() []PageID {
	return []PageID{PageTitle, PageNotice, PageWelcome, PageCatalog, PageTaskDetail, PageEditTask, PageHelp}
}

// ParsePage maps an address token to a page. Unknown tokens report false.
func ParsePage(token string) (PageID, bool) {
	p, ok := tokenPages[strings.ToLower(strings.TrimSpace(token))]
	return p, ok
}

func (p PageID) Valid() bool {
	_, ok := pageTokens[p]
	return ok
}

// Token returns the address token for p, or "" for an unknown page.
func (p PageID) Token() string { return pageTokens[p] }

func (p PageID) String() string { return string(p) }
