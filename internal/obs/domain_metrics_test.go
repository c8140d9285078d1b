package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestDomainMetrics(t *testing.T) {
	MustRegisterDomainMetrics("lab", prometheus.NewRegistry())

	before := testutil.ToFloat64(ResultClassificationTotal.WithLabelValues("indeterminate"))
	ObserveClassification("")
	require.Equal(t, before+1, testutil.ToFloat64(ResultClassificationTotal.WithLabelValues("indeterminate")))

	beforeRule := testutil.ToFloat64(RangeResolutionTotal.WithLabelValues("first"))
	ObserveRangeResolution("first")
	require.Equal(t, beforeRule+1, testutil.ToFloat64(RangeResolutionTotal.WithLabelValues("first")))

	beforeOverflow := testutil.ToFloat64(AmountWordsOverflowTotal)
	ObserveWordsOverflow()
	require.Equal(t, beforeOverflow+1, testutil.ToFloat64(AmountWordsOverflowTotal))
}
