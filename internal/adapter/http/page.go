package http

import (
	"html/template"
	"strings"
	"time"

	"github.com/couchcryptid/cenipa-dashboard/internal/dashboard"
	"github.com/couchcryptid/cenipa-dashboard/internal/domain"
)

var funcMap = template.FuncMap{
	"fmtDate": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("02/01/2006 15:04")
	},
	"join": strings.Join,
	"cell": func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	},
}

var pageTemplate = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplDashboard))

type labelOption struct {
	Value    string
	Selected bool
}

type pageData struct {
	Title         string
	Years         dashboard.YearRange
	Params        dashboard.Params
	Options       []labelOption
	View          dashboard.View
	Columns       []string
	TableRows     [][]string
	PointsURL     string
	DatasetRows   int
	DatasetSum    string
	DatasetLoaded time.Time
}

func newPageData(res dashboard.Result, years dashboard.YearRange) pageData {
	selected := make(map[string]bool, len(res.Params.Labels))
	for _, l := range res.Params.Labels {
		selected[l] = true
	}
	classes := res.Dataset.Classifications()
	options := make([]labelOption, 0, len(classes))
	for _, c := range classes {
		options = append(options, labelOption{Value: c, Selected: selected[c]})
	}

	data := pageData{
		Title:         "CENIPA - Acidentes Aeronáuticos",
		Years:         years,
		Params:        res.Params,
		Options:       options,
		View:          res.View,
		PointsURL:     "/api/points?" + res.Params.Canonical(),
		DatasetRows:   res.Dataset.Len(),
		DatasetSum:    res.Dataset.Checksum(),
		DatasetLoaded: res.Dataset.LoadedAt(),
	}

	if res.Params.ShowTable {
		data.Columns = append([]string{domain.IDColumn}, domain.Columns...)
		data.TableRows = make([][]string, 0, len(res.View.Table))
		for _, o := range res.View.Table {
			data.TableRows = append(data.TableRows, append([]string{o.ID}, o.Values()...))
		}
	}
	return data
}
