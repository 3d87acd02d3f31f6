package models

// ParquetPersonRecord defines the schema for archiving scraped records using
// parquet-go/parquet-go. Tags follow parquet-go conventions; optional fields
// use pointers with the ',optional' tag.
type ParquetPersonRecord struct {
	ProfileURL      string  `parquet:"profile_url"` // REQUIRED by default
	NameTH          *string `parquet:"name_th,optional"`
	NameEN          *string `parquet:"name_en,optional"`
	Position        *string `parquet:"position,optional"`
	Email           *string `parquet:"email,optional"`
	PhotoURL        *string `parquet:"photo_url,optional"`
	Info            *string `parquet:"info,optional"`
	Education       *string `parquet:"education,optional"`
	RunID           string  `parquet:"run_id"`
	ScrapeTimestamp int64   `parquet:"scrape_timestamp"` // TIMESTAMP_MILLIS
}

// ToParquetPersonRecord converts a PersonRecord into its archive shape.
func ToParquetPersonRecord(rec PersonRecord, runID string, scrapedAtMillis int64) ParquetPersonRecord {
	optional := func(s string) *string {
		if s == "" {
			return nil
		}
		v := s
		return &v
	}

	return ParquetPersonRecord{
		ProfileURL:      rec.ProfileURL,
		NameTH:          optional(rec.NameTH),
		NameEN:          optional(rec.NameEN),
		Position:        optional(rec.Position),
		Email:           optional(rec.Email),
		PhotoURL:        optional(rec.PhotoURL),
		Info:            optional(rec.Info),
		Education:       optional(rec.Education),
		RunID:           runID,
		ScrapeTimestamp: scrapedAtMillis,
	}
}

// FromParquetPersonRecord restores the output-shaped record from an archived
// row. Missing optional columns come back as empty strings.
func FromParquetPersonRecord(row ParquetPersonRecord) PersonRecord {
	value := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	return PersonRecord{
		NameTH:     value(row.NameTH),
		NameEN:     value(row.NameEN),
		Position:   value(row.Position),
		Email:      value(row.Email),
		PhotoURL:   value(row.PhotoURL),
		Info:       value(row.Info),
		Education:  value(row.Education),
		ProfileURL: row.ProfileURL,
	}
}
