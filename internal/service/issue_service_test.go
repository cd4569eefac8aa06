package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

type stubSignatureStore struct {
	saved []string
	fail  error
}

// Save returns a distinct path per call so tests can tell apart the
// signatures of successive issuances.
func (s *stubSignatureStore) Save(_ context.Context, payload, prefix string) (string, error) {
	if s.fail != nil {
		return "", s.fail
	}
	path := fmt.Sprintf("signatures/%s_%d.png", prefix, len(s.saved))
	s.saved = append(s.saved, path)
	return path, nil
}

func createTestTeacher(t *testing.T, db *gorm.DB, name string) models.Teacher {
	t.Helper()

	department := models.Department{Name: "Dept " + name, Active: true}
	require.NoError(t, db.Create(&department).Error)

	teacher := models.Teacher{Name: name, DepartmentID: department.ID, Active: true}
	require.NoError(t, db.Create(&teacher).Error)
	return teacher
}

func newTestIssueService(t *testing.T, db *gorm.DB, sigs *stubSignatureStore) IssueService {
	t.Helper()

	return NewIssueService(
		repository.NewTxRunner(db),
		repository.NewTeacherRepository(db),
		repository.NewIssueRepository(db),
		NewLedger(zerolog.Nop()),
		sigs,
		NewStockAlerter(nil, zerolog.Nop()),
		zerolog.Nop(),
	)
}

func rawQty(value string) json.RawMessage {
	return json.RawMessage(value)
}

func TestProcessIssueHappyPath(t *testing.T) {
	db := openTestDB(t, "issue_happy")
	teacher := createTestTeacher(t, db, "Ana")
	markers := createTestItem(t, db, "markers", 10)
	paper := createTestItem(t, db, "paper", 30)

	svc := newTestIssueService(t, db, &stubSignatureStore{})

	response, err := svc.ProcessIssue(context.Background(), ProcessIssueInput{
		ActorID:   1,
		TeacherID: teacher.ID,
		Lines: map[string]json.RawMessage{
			fmt.Sprint(markers.ID): rawQty("2"),
			fmt.Sprint(paper.ID):   rawQty(`"5"`),
		},
		Signature: "data:image/png;base64,stub",
	})
	require.NoError(t, err)
	require.Len(t, response.Lines, 2)
	require.Empty(t, response.SkippedItems)
	require.Equal(t, teacher.ID, response.TeacherID)
	require.NotEmpty(t, response.SignaturePath)

	var updatedMarkers, updatedPaper models.Item
	require.NoError(t, db.First(&updatedMarkers, markers.ID).Error)
	require.NoError(t, db.First(&updatedPaper, paper.ID).Error)
	require.Equal(t, 8, updatedMarkers.StockOnHand)
	require.Equal(t, 25, updatedPaper.StockOnHand)

	var logCount int64
	require.NoError(t, db.Model(&models.InventoryLog{}).Where("event_type = ?", models.EventIssue).Count(&logCount).Error)
	require.Equal(t, int64(2), logCount)
}

func TestProcessIssueInsufficientStockRollsBackEverything(t *testing.T) {
	db := openTestDB(t, "issue_rollback")
	teacher := createTestTeacher(t, db, "Ben")
	markers := createTestItem(t, db, "markers", 10)
	staplers := createTestItem(t, db, "staplers", 1)

	svc := newTestIssueService(t, db, &stubSignatureStore{})

	_, err := svc.ProcessIssue(context.Background(), ProcessIssueInput{
		ActorID:   1,
		TeacherID: teacher.ID,
		Lines: map[string]json.RawMessage{
			fmt.Sprint(markers.ID):  rawQty("2"),
			fmt.Sprint(staplers.ID): rawQty("5"),
		},
		Signature: "data:image/png;base64,stub",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing survives the failed attempt: no issue, no lines, no log rows
	// and no stock change, even for the line that had enough stock.
	var issueCount, lineCount, logCount int64
	require.NoError(t, db.Model(&models.Issue{}).Count(&issueCount).Error)
	require.NoError(t, db.Model(&models.IssueLine{}).Count(&lineCount).Error)
	require.NoError(t, db.Model(&models.InventoryLog{}).Count(&logCount).Error)
	require.Zero(t, issueCount)
	require.Zero(t, lineCount)
	require.Zero(t, logCount)

	var updatedMarkers models.Item
	require.NoError(t, db.First(&updatedMarkers, markers.ID).Error)
	require.Equal(t, 10, updatedMarkers.StockOnHand)
}

func TestProcessIssueValidation(t *testing.T) {
	db := openTestDB(t, "issue_validation")
	teacher := createTestTeacher(t, db, "Clara")
	item := createTestItem(t, db, "pens", 5)

	svc := newTestIssueService(t, db, &stubSignatureStore{})

	_, err := svc.ProcessIssue(context.Background(), ProcessIssueInput{
		TeacherID: teacher.ID,
		Lines:     map[string]json.RawMessage{},
		Signature: "data:image/png;base64,stub",
	})
	require.ErrorIs(t, err, ErrCartEmpty)

	_, err = svc.ProcessIssue(context.Background(), ProcessIssueInput{
		TeacherID: teacher.ID,
		Lines:     map[string]json.RawMessage{fmt.Sprint(item.ID): rawQty("1")},
		Signature: "   ",
	})
	require.ErrorIs(t, err, ErrSignatureRequired)

	_, err = svc.ProcessIssue(context.Background(), ProcessIssueInput{
		TeacherID: 404,
		Lines:     map[string]json.RawMessage{fmt.Sprint(item.ID): rawQty("1")},
		Signature: "data:image/png;base64,stub",
	})
	require.ErrorIs(t, err, ErrTeacherNotFound)

	_, err = svc.ProcessIssue(context.Background(), ProcessIssueInput{
		TeacherID: teacher.ID,
		Lines:     map[string]json.RawMessage{fmt.Sprint(item.ID): rawQty(`"two"`)},
		Signature: "data:image/png;base64,stub",
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestProcessIssueSkipsUnresolvedAndNonPositiveLines(t *testing.T) {
	db := openTestDB(t, "issue_skips")
	teacher := createTestTeacher(t, db, "Dana")
	item := createTestItem(t, db, "erasers", 10)

	svc := newTestIssueService(t, db, &stubSignatureStore{})

	response, err := svc.ProcessIssue(context.Background(), ProcessIssueInput{
		ActorID:   1,
		TeacherID: teacher.ID,
		Lines: map[string]json.RawMessage{
			fmt.Sprint(item.ID): rawQty("3"),
			"99999":             rawQty("2"),
			"not-an-id":         rawQty("1"),
			"0":                 rawQty("1"),
		},
		Signature: "data:image/png;base64,stub",
	})
	require.NoError(t, err)
	require.Len(t, response.Lines, 1)
	require.ElementsMatch(t, []string{"99999", "not-an-id", "0"}, response.SkippedItems)

	var updated models.Item
	require.NoError(t, db.First(&updated, item.ID).Error)
	require.Equal(t, 7, updated.StockOnHand)
}

func TestProcessIssueDropsZeroQuantitySilently(t *testing.T) {
	db := openTestDB(t, "issue_zero_qty")
	teacher := createTestTeacher(t, db, "Eli")
	pens := createTestItem(t, db, "pens", 10)
	pads := createTestItem(t, db, "pads", 10)

	svc := newTestIssueService(t, db, &stubSignatureStore{})

	response, err := svc.ProcessIssue(context.Background(), ProcessIssueInput{
		ActorID:   1,
		TeacherID: teacher.ID,
		Lines: map[string]json.RawMessage{
			fmt.Sprint(pens.ID): rawQty("0"),
			fmt.Sprint(pads.ID): rawQty("4"),
		},
		Signature: "data:image/png;base64,stub",
	})
	require.NoError(t, err)
	require.Len(t, response.Lines, 1)
	require.Equal(t, pads.ID, response.Lines[0].ItemID)
	require.Empty(t, response.SkippedItems)

	var updatedPens models.Item
	require.NoError(t, db.First(&updatedPens, pens.ID).Error)
	require.Equal(t, 10, updatedPens.StockOnHand)
}

func TestProcessIssueFirstSignatureWins(t *testing.T) {
	db := openTestDB(t, "issue_first_sig")
	teacher := createTestTeacher(t, db, "Finn")
	item := createTestItem(t, db, "chalk", 20)

	sigs := &stubSignatureStore{}
	svc := newTestIssueService(t, db, sigs)

	for i := 0; i < 2; i++ {
		_, err := svc.ProcessIssue(context.Background(), ProcessIssueInput{
			ActorID:   1,
			TeacherID: teacher.ID,
			Lines:     map[string]json.RawMessage{fmt.Sprint(item.ID): rawQty("1")},
			Signature: "data:image/png;base64,stub",
		})
		require.NoError(t, err)
	}

	require.Len(t, sigs.saved, 2)
	require.NotEqual(t, sigs.saved[0], sigs.saved[1])

	// The reference signature keeps the first issuance's path; the second
	// issuance's different path must not overwrite it.
	var updated models.Teacher
	require.NoError(t, db.First(&updated, teacher.ID).Error)
	require.Equal(t, sigs.saved[0], updated.SignaturePath)
}

func TestProcessIssueRecordsPairingCode(t *testing.T) {
	db := openTestDB(t, "issue_pairing")
	teacher := createTestTeacher(t, db, "Gus")
	item := createTestItem(t, db, "tape", 5)

	svc := newTestIssueService(t, db, &stubSignatureStore{})

	response, err := svc.ProcessIssue(context.Background(), ProcessIssueInput{
		ActorID:     1,
		TeacherID:   teacher.ID,
		Lines:       map[string]json.RawMessage{fmt.Sprint(item.ID): rawQty("1")},
		Signature:   "data:image/png;base64,stub",
		PairingCode: "0421",
	})
	require.NoError(t, err)

	var issue models.Issue
	require.NoError(t, db.First(&issue, response.ID).Error)
	require.Equal(t, "0421", issue.Metadata["pairing_code"])
}

func TestParseQuantityForms(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "3", want: 3},
		{raw: `"7"`, want: 7},
		{raw: `" 2 "`, want: 2},
		{raw: "2.5", wantErr: true},
		{raw: `"abc"`, wantErr: true},
		{raw: "true", wantErr: true},
		{raw: "-1", want: -1},
	}

	for _, tc := range cases {
		got, err := parseQuantity(json.RawMessage(tc.raw))
		if tc.wantErr {
			require.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}
}
