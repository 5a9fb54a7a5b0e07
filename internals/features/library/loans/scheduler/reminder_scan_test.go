package scheduler

import (
	"context"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loanService "library_backend/internals/features/library/loans/service"
	"library_backend/internals/metrics"
	"library_backend/internals/testutil"
)

func TestRunReminderScanOnce_SetsGauges(t *testing.T) {
	db := testutil.NewTestDB(t)
	fx := testutil.NewFixtures(t, db)
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	svc := loanService.NewLoanService(db, loanService.DefaultPolicy())
	svc.Now = func() time.Time { return clock }

	r := fx.Reader("reader1")
	a := fx.Author("Ray", "Bradbury")
	for _, due := range []int{1, 2, 30} {
		b := fx.Book("Fahrenheit 451", a, nil, testutil.BookOpts{})
		_, err := svc.Issue(context.Background(), b.BookID, r.ReaderID, time.Date(2024, 3, due, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	}

	clock = clock.AddDate(0, 0, 1) // 2024-03-02
	res, err := RunReminderScanOnce(context.Background(), svc)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Outstanding)
	assert.Equal(t, 1, res.Overdue)
	assert.Equal(t, 1, res.DueSoon)
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.OverdueIssues))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.DueSoonIssues))
}

func TestStartReminderScanScheduler_StopsOnCancel(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := loanService.NewLoanService(db, loanService.DefaultPolicy())

	ctx, cancel := context.WithCancel(context.Background())
	StartReminderScanScheduler(ctx, svc, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
}
