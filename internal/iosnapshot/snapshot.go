// Package iosnapshot reads JSON snapshots written by the trial
// extraction job and imports them into the raw_trials table.
//
// A snapshot is either an object with "metadata" and "trials" fields or a
// bare array of trials. Trial fields use registry names (NCTId,
// BriefTitle, LeadSponsorName...). Snapshots are read from the local file
// system or from S3 compatible storage (s3://bucket/key).
package iosnapshot

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/schema"
)

// Metadata describes the extraction that produced a snapshot.
type Metadata struct {
	ExtractionDate string `json:"extraction_date"`
	TotalTrials    int    `json:"total_trials"`
}

type snapshot struct {
	Metadata Metadata `json:"metadata"`
	Trials   []record `json:"trials"`
}

type record struct {
	NctID                     *string    `json:"NCTId"`
	BriefTitle                *string    `json:"BriefTitle"`
	OfficialTitle             *string    `json:"OfficialTitle"`
	LeadSponsorName           *string    `json:"LeadSponsorName"`
	LeadSponsorClass          *string    `json:"LeadSponsorClass"`
	Condition                 *string    `json:"Condition"`
	InterventionName          *string    `json:"InterventionName"`
	InterventionType          *string    `json:"InterventionType"`
	Phase                     *string    `json:"Phase"`
	EnrollmentCount           enrollment `json:"EnrollmentCount"`
	StudyStartDate            *string    `json:"StudyStartDate"`
	PrimaryCompletionDate     *string    `json:"PrimaryCompletionDate"`
	StudyCompletionDate       *string    `json:"StudyCompletionDate"`
	Status                    *string    `json:"Status"`
	LocationCountry           *string    `json:"LocationCountry"`
	LocationState             *string    `json:"LocationState"`
	LocationCity              *string    `json:"LocationCity"`
	LocationFacility          *string    `json:"LocationFacility"`
	Location                  *string    `json:"Location"`
	StudyType                 *string    `json:"StudyType"`
	Allocation                *string    `json:"Allocation"`
	InterventionModel         *string    `json:"InterventionModel"`
	PrimaryPurpose            *string    `json:"PrimaryPurpose"`
	MaskingInfo               *string    `json:"MaskingInfo"`
	OutcomeMeasureDescription *string    `json:"OutcomeMeasureDescription"`
}

// enrollment accepts integers, numeric strings with thousands separators
// and null. Floats count only when they are whole and fit into int64.
// Anything else is treated as absent.
type enrollment sql.NullInt64

func (e *enrollment) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		*e = enrollment{}
		return nil
	}
	n, ok := parseCount(s)
	*e = enrollment{Int64: n, Valid: ok}
	return nil
}

func parseCount(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	// MaxInt64 as float64 is 2^63.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Read loads raw trials from source. Records keep snapshot order in
// RowNum, starting from 1.
func Read(
	ctx context.Context,
	cfg *config.Config,
	source string,
) ([]schema.RawTrial, error) {
	path := source
	if isS3(source) {
		var err error
		if path, err = download(ctx, cfg, source); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SnapshotReadError(source, err)
	}

	res, err := Decode(data)
	if err != nil {
		return nil, SnapshotDecodeError(source, err)
	}

	slog.Info("Snapshot read",
		"source", source,
		"records", humanize.Comma(int64(len(res))),
	)
	return res, nil
}

// Decode converts snapshot JSON to raw trials.
func Decode(data []byte) ([]schema.RawTrial, error) {
	enc := gnfmt.GNjson{}
	data = bytes.TrimSpace(data)

	var recs []record
	if bytes.HasPrefix(data, []byte("[")) {
		if err := enc.Decode(data, &recs); err != nil {
			return nil, err
		}
	} else {
		var snap snapshot
		if err := enc.Decode(data, &snap); err != nil {
			return nil, err
		}
		recs = snap.Trials
		if snap.Metadata.TotalTrials > 0 &&
			snap.Metadata.TotalTrials != len(recs) {
			slog.Warn("Snapshot metadata does not match its content",
				"total_trials", snap.Metadata.TotalTrials,
				"trials", len(recs),
			)
		}
	}

	res := make([]schema.RawTrial, len(recs))
	for i := range recs {
		res[i] = recs[i].rawTrial(i + 1)
	}
	return res, nil
}

func (r *record) rawTrial(rowNum int) schema.RawTrial {
	return schema.RawTrial{
		RowNum:                    rowNum,
		NctID:                     nullString(r.NctID),
		BriefTitle:                nullString(r.BriefTitle),
		OfficialTitle:             nullString(r.OfficialTitle),
		LeadSponsorName:           nullString(r.LeadSponsorName),
		LeadSponsorClass:          nullString(r.LeadSponsorClass),
		Condition:                 nullString(r.Condition),
		InterventionName:          nullString(r.InterventionName),
		InterventionType:          nullString(r.InterventionType),
		Phase:                     nullString(r.Phase),
		EnrollmentCount:           sql.NullInt64(r.EnrollmentCount),
		StudyStartDate:            nullString(r.StudyStartDate),
		PrimaryCompletionDate:     nullString(r.PrimaryCompletionDate),
		StudyCompletionDate:       nullString(r.StudyCompletionDate),
		Status:                    nullString(r.Status),
		LocationCountry:           nullString(r.LocationCountry),
		LocationState:             nullString(r.LocationState),
		LocationCity:              nullString(r.LocationCity),
		LocationFacility:          nullString(r.LocationFacility),
		Location:                  nullString(r.Location),
		StudyType:                 nullString(r.StudyType),
		Allocation:                nullString(r.Allocation),
		InterventionModel:         nullString(r.InterventionModel),
		PrimaryPurpose:            nullString(r.PrimaryPurpose),
		MaskingInfo:               nullString(r.MaskingInfo),
		OutcomeMeasureDescription: nullString(r.OutcomeMeasureDescription),
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
