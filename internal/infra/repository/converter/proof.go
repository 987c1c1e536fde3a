package converter

import (
	"encoding/json"

	"inspection-marketplace/internal/domain/inspection"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/pgconv"
)

type checklistItemJSON struct {
	Component string `json:"component"`
	Condition string `json:"condition"`
	Note      string `json:"note,omitempty"`
}

func ProofToInsert(p *inspection.Proof) (sqlc.InsertProofParams, error) {
	items := p.Checklist().Items()
	raw := make([]checklistItemJSON, 0, len(items))
	for _, it := range items {
		raw = append(raw, checklistItemJSON{Component: it.Component, Condition: string(it.Condition), Note: it.Note})
	}
	checklist, err := json.Marshal(raw)
	if err != nil {
		return sqlc.InsertProofParams{}, errs.Wrap(err, "marshal checklist")
	}

	params := sqlc.InsertProofParams{
		ID:           p.ID(),
		BookingID:    p.BookingID(),
		PhotoUrls:    p.PhotoURLs(),
		OdometerKm:   int32(p.OdometerKm()), // #nosec G115
		PlateReading: p.PlateReading(),
		ReportUrl:    pgconv.StringPtrToPgtype(p.ReportURL()),
		Checklist:    checklist,
		CreatedAt:    pgconv.TimeToPgtype(p.CreatedAt()),
	}
	if gps := p.GPS(); gps != nil {
		params.GpsLat = pgconv.Float64PtrToPgtype(&gps.Lat)
		params.GpsLng = pgconv.Float64PtrToPgtype(&gps.Lng)
	}
	return params, nil
}

func ProofFromRow(row sqlc.ValidationProofs) (*inspection.Proof, error) {
	var raw []checklistItemJSON
	if err := json.Unmarshal(row.Checklist, &raw); err != nil {
		return nil, errs.Wrap(err, "unmarshal checklist")
	}
	items := make([]inspection.Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, inspection.Item{Component: r.Component, Condition: inspection.Condition(r.Condition), Note: r.Note})
	}

	var gps *inspection.GPS
	if row.GpsLat.Valid && row.GpsLng.Valid {
		gps = &inspection.GPS{Lat: row.GpsLat.Float64, Lng: row.GpsLng.Float64}
	}
	return inspection.ReconstructProof(
		row.ID,
		row.BookingID,
		row.PhotoUrls,
		int(row.OdometerKm),
		row.PlateReading,
		gps,
		pgconv.StringPtrFromPgtype(row.ReportUrl),
		inspection.ReconstructChecklist(items),
		row.CreatedAt.Time,
	), nil
}
