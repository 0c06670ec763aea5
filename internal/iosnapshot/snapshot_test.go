package iosnapshot_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/internal/iodb"
	"github.com/gnames/trialwh/internal/ioschema"
	"github.com/gnames/trialwh/internal/iosnapshot"
	"github.com/gnames/trialwh/internal/iotesting"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/errcode"
	"github.com/gnames/trialwh/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `{
  "metadata": {
    "extraction_date": "2024-05-01T10:00:00",
    "total_trials": 3,
    "search_criteria": {"conditions": ["cancer"]}
  },
  "validation_summary": {"valid_trials": 3},
  "trials": [
    {
      "NCTId": "NCT001",
      "BriefTitle": "Acme lung study",
      "LeadSponsorName": "Acme Univ",
      "LeadSponsorClass": "OTHER",
      "Condition": "Lung Cancer; Asthma",
      "EnrollmentCount": 50,
      "StudyStartDate": "2023-01-15",
      "LocationCity": "Boston",
      "LocationCountry": "United States"
    },
    {"NCTId": "NCT002", "EnrollmentCount": "1,250", "Phase": "PHASE3"},
    {"NCTId": null, "EnrollmentCount": null, "BriefTitle": "orphan"}
  ]
}`

func TestDecode(t *testing.T) {
	raw, err := iosnapshot.Decode([]byte(snapshotJSON))
	require.NoError(t, err)
	require.Len(t, raw, 3)

	r := raw[0]
	assert.Equal(t, 1, r.RowNum)
	assert.Equal(t, "NCT001", r.NctID.String)
	assert.Equal(t, "Lung Cancer; Asthma", r.Condition.String)
	assert.Equal(t, int64(50), r.EnrollmentCount.Int64)
	assert.True(t, r.EnrollmentCount.Valid)
	assert.False(t, r.Phase.Valid)

	assert.Equal(t, 2, raw[1].RowNum)
	assert.Equal(t, int64(1250), raw[1].EnrollmentCount.Int64)
	assert.Equal(t, "PHASE3", raw[1].Phase.String)

	assert.False(t, raw[2].NctID.Valid)
	assert.False(t, raw[2].EnrollmentCount.Valid)
}

func TestDecodeArray(t *testing.T) {
	data := `[{"NCTId": "NCT9", "EnrollmentCount": "unknown"}]`
	raw, err := iosnapshot.Decode([]byte(data))
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "NCT9", raw[0].NctID.String)
	assert.False(t, raw[0].EnrollmentCount.Valid)

	raw, err = iosnapshot.Decode([]byte(" [] "))
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestDecodeEnrollment(t *testing.T) {
	tests := []struct {
		msg   string
		in    string
		want  int64
		valid bool
	}{
		{"number", `50`, 50, true},
		{"string", `"50"`, 50, true},
		{"separators", `"12,500"`, 12500, true},
		{"whole float", `50.0`, 50, true},
		{"exponent", `"1e3"`, 1000, true},
		{"max", `"9223372036854775807"`, 9223372036854775807, true},
		{"fraction", `"50.7"`, 0, false},
		{"fraction number", `50.7`, 0, false},
		{"too large", `"1e30"`, 0, false},
		{"too small", `-1e30`, 0, false},
		{"infinity", `"Inf"`, 0, false},
		{"nan", `"NaN"`, 0, false},
		{"text", `"about 50"`, 0, false},
		{"null", `null`, 0, false},
	}

	for _, v := range tests {
		data := `[{"NCTId": "NCT1", "EnrollmentCount": ` + v.in + `}]`
		raw, err := iosnapshot.Decode([]byte(data))
		require.NoError(t, err, v.msg)
		require.Len(t, raw, 1, v.msg)
		assert.Equal(t, v.valid, raw[0].EnrollmentCount.Valid, v.msg)
		assert.Equal(t, v.want, raw[0].EnrollmentCount.Int64, v.msg)
	}
}

func TestDecodeError(t *testing.T) {
	_, err := iosnapshot.Decode([]byte(`{"trials": [`))
	assert.Error(t, err)
}

func TestReadLocal(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)
	path := iotesting.WriteFile(t, cfg.HomeDir, "trials.json", snapshotJSON)

	raw, err := iosnapshot.Read(ctx, cfg, path)
	require.NoError(t, err)
	assert.Len(t, raw, 3)

	_, err = iosnapshot.Read(ctx, cfg, filepath.Join(cfg.HomeDir, "none.json"))
	assertCode(t, err, errcode.SnapshotReadError)

	bad := iotesting.WriteFile(t, cfg.HomeDir, "bad.json", "not json")
	_, err = iosnapshot.Read(ctx, cfg, bad)
	assertCode(t, err, errcode.SnapshotDecodeError)
}

func TestReadS3(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(snapshotJSON))
		}))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "aws_config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "aws_creds"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	cfg := iotesting.SQLiteConfig(t)
	cfg.Update([]config.Option{
		config.OptS3Region("us-east-1"),
		config.OptS3Endpoint(srv.URL),
		config.OptS3UsePathStyle(true),
	})

	raw, err := iosnapshot.Read(context.Background(), cfg,
		"s3://trials/extracts/trials.json")
	require.NoError(t, err)
	assert.Len(t, raw, 3)
	assert.Equal(t, "/trials/extracts/trials.json", gotPath)
	assert.FileExists(t, filepath.Join(config.CacheDir(cfg.HomeDir),
		"snapshots", "trials.json"))
}

func TestReadS3BadURL(t *testing.T) {
	cfg := iotesting.SQLiteConfig(t)
	_, err := iosnapshot.Read(context.Background(), cfg, "s3://bucket-only")
	assertCode(t, err, errcode.SnapshotS3Error)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)
	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()
	require.NoError(t, ioschema.NewManager(op).Create(ctx, false))

	im := iosnapshot.NewImporter(cfg, op)
	_, err := im.Import(ctx, "")
	assertCode(t, err, errcode.SnapshotReadError)

	path := iotesting.WriteFile(t, cfg.HomeDir, "trials.json", snapshotJSON)
	n, err := im.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// import replaces previous content
	path = iotesting.WriteFile(t, cfg.HomeDir, "one.json",
		`[{"NCTId": "NCT777"}]`)
	cfg.Update([]config.Option{config.OptRefreshSnapshot(path)})
	n, err = im.Import(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var ids []string
	var r schema.RawTrial
	err = op.Select(ctx, "raw_trials", []string{"row_num", "nct_id"},
		func(scan db.ScanFunc) error {
			if err := scan(&r.RowNum, &r.NctID); err != nil {
				return err
			}
			ids = append(ids, r.NctID.String)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"NCT777"}, ids)
}

func assertCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, code, gnErr.Code)
}
