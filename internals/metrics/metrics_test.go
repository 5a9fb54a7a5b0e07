package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordReturn_AddsFineOnlyWhenPositive(t *testing.T) {
	returned := testutil.ToFloat64(LoansReturned)
	fines := testutil.ToFloat64(FinesAssessed)

	RecordReturn(0)
	RecordReturn(30)

	assert.Equal(t, returned+2, testutil.ToFloat64(LoansReturned))
	assert.Equal(t, fines+30, testutil.ToFloat64(FinesAssessed))
}

func TestRecordIssueRejected_ByReason(t *testing.T) {
	before := testutil.ToFloat64(LoanIssueRejected.WithLabelValues(ReasonUnavailable))
	RecordIssueRejected(ReasonUnavailable)
	assert.Equal(t, before+1, testutil.ToFloat64(LoanIssueRejected.WithLabelValues(ReasonUnavailable)))
}

func TestSetReminderGauges(t *testing.T) {
	SetReminderGauges(4, 2)
	assert.Equal(t, 4.0, testutil.ToFloat64(OverdueIssues))
	assert.Equal(t, 2.0, testutil.ToFloat64(DueSoonIssues))
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/public/books", "200"))
	RecordAPIRequest("GET", "/api/public/books", 200, 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/public/books", "200")))
}
