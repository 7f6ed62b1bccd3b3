// Package domain models CENIPA aeronautical occurrence records.
//
// # Data Source
//
// Occurrences come from the open dataset published by the Centro de
// Investigação e Prevenção de Acidentes Aeronáuticos (CENIPA) as a single
// comma-separated file with a header row, one row per occurrence. Column
// order varies between releases, so columns are always located by name.
//
// # Column Whitelist
//
// Only twelve source columns are kept. Each is renamed to a short domain
// name (see [Columns] and [SourceColumns]); every other column is dropped:
//
//	ocorrencia_latitude          → latitude
//	ocorrencia_longitude         → longitude
//	ocorrencia_dia               → data (combined with ocorrencia_horario)
//	ocorrencia_classificacao     → classificacao
//	ocorrencia_tipo              → tipo
//	ocorrencia_tipo_categoria    → tipo_categoria
//	ocorrencia_tipo_icao         → tipo_icao
//	ocorrencia_aerodromo         → aerodromo
//	ocorrencia_cidade            → cidade
//	investigacao_status          → status
//	divulgacao_relatorio_numero  → relatorio_numero
//	total_aeronaves_envolvidas   → aeronaves_envolvidas
//
// codigo_ocorrencia is the row identifier and is unique across the file.
//
// # Date and Time
//
// The date (ocorrencia_dia) and time of day (ocorrencia_horario) are stored
// in separate columns. They are joined with a single space and parsed as one
// timestamp. Both ISO order ("2017-03-05 14:30:00") and the Brazilian
// day/month/year order ("05/03/2017 14:30:00") are accepted; seconds are
// optional. A row whose combination does not parse is a fatal data error.
//
// # Coordinates
//
// Latitude and longitude are decimal degrees. Older releases use "***" or an
// empty cell for unknown positions; those are kept as nil and excluded from
// map points, but the row itself is kept.
//
// # Classification
//
// ocorrencia_classificacao holds labels such as "INCIDENTE", "ACIDENTE" and
// "INCIDENTE GRAVE". The set is not fixed: it is discovered from the loaded
// rows in order of first appearance ([Classifications]).
package domain
