package domain

import (
	"strconv"
	"time"
)

// Source column names in the CENIPA file that are not renamed into the
// whitelist but are still needed while reading.
const (
	IDColumn   = "codigo_ocorrencia"
	TimeColumn = "ocorrencia_horario"
	// StateColumn is optional and only consulted for geocoding.
	StateColumn = "ocorrencia_uf"
)

// Domain column names, in table order.
const (
	ColLatitude         = "latitude"
	ColLongitude        = "longitude"
	ColDate             = "data"
	ColClassification   = "classificacao"
	ColType             = "tipo"
	ColTypeCategory     = "tipo_categoria"
	ColTypeICAO         = "tipo_icao"
	ColAerodrome        = "aerodromo"
	ColCity             = "cidade"
	ColStatus           = "status"
	ColReportNumber     = "relatorio_numero"
	ColAircraftInvolved = "aeronaves_envolvidas"
)

// whitelist pairs each kept source column with its domain name, in table order.
var whitelist = [...]struct{ source, name string }{
	{"ocorrencia_latitude", ColLatitude},
	{"ocorrencia_longitude", ColLongitude},
	{"ocorrencia_dia", ColDate},
	{"ocorrencia_classificacao", ColClassification},
	{"ocorrencia_tipo", ColType},
	{"ocorrencia_tipo_categoria", ColTypeCategory},
	{"ocorrencia_tipo_icao", ColTypeICAO},
	{"ocorrencia_aerodromo", ColAerodrome},
	{"ocorrencia_cidade", ColCity},
	{"investigacao_status", ColStatus},
	{"divulgacao_relatorio_numero", ColReportNumber},
	{"total_aeronaves_envolvidas", ColAircraftInvolved},
}

// Columns is the projected column set of a loaded dataset, in table order.
var Columns = func() []string {
	cols := make([]string, len(whitelist))
	for i, w := range whitelist {
		cols[i] = w.name
	}
	return cols
}()

// SourceColumns maps each whitelisted source column to its domain name.
var SourceColumns = func() map[string]string {
	m := make(map[string]string, len(whitelist))
	for _, w := range whitelist {
		m[w.source] = w.name
	}
	return m
}()

// RequiredColumns lists every source column a file must carry, in the order
// they are checked: the identifier, the whitelist, then the time of day.
func RequiredColumns() []string {
	cols := make([]string, 0, len(whitelist)+2)
	cols = append(cols, IDColumn)
	for _, w := range whitelist {
		cols = append(cols, w.source)
	}
	return append(cols, TimeColumn)
}

// Occurrence is one row of the dataset after projection and renaming.
// ID is the row index and is not one of the projected columns.
type Occurrence struct {
	ID               string    `json:"-"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	Date             time.Time `json:"data"`
	Classification   string    `json:"classificacao"`
	Type             string    `json:"tipo"`
	TypeCategory     string    `json:"tipo_categoria"`
	TypeICAO         string    `json:"tipo_icao"`
	Aerodrome        string    `json:"aerodromo"`
	City             string    `json:"cidade"`
	Status           string    `json:"status"`
	ReportNumber     string    `json:"relatorio_numero"`
	AircraftInvolved int       `json:"aeronaves_envolvidas"`
}

// Year returns the calendar year of the occurrence timestamp.
func (o Occurrence) Year() int {
	return o.Date.Year()
}

// HasValidLocation reports whether both coordinates are present and within
// WGS-84 bounds.
func (o Occurrence) HasValidLocation() bool {
	if o.Latitude == nil || o.Longitude == nil {
		return false
	}
	lat, lon := *o.Latitude, *o.Longitude
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Values renders the projected columns as display strings, aligned with Columns.
// Missing coordinates render as an empty cell.
func (o Occurrence) Values() []string {
	return []string{
		formatCoordinate(o.Latitude),
		formatCoordinate(o.Longitude),
		o.Date.Format("2006-01-02 15:04:05"),
		o.Classification,
		o.Type,
		o.TypeCategory,
		o.TypeICAO,
		o.Aerodrome,
		o.City,
		o.Status,
		o.ReportNumber,
		strconv.Itoa(o.AircraftInvolved),
	}
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
