package manifest

import (
	"net/url"

	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

// ViewerBaseURL renders an xlsx file from its public URL.
const ViewerBaseURL = "https://view.officeapps.live.com/op/view.aspx"

// ViewerURL returns a link that opens the source in a web spreadsheet viewer.
func ViewerURL(src models.Source) string {
	if src.URL == "" {
		return ""
	}
	return ViewerBaseURL + "?src=" + url.QueryEscape(src.URL)
}
