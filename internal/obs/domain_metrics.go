package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// RangeResolutionTotal counts reference range lookups by the fallback step that matched.
	RangeResolutionTotal *prometheus.CounterVec
	// ResultClassificationTotal counts classified results by status.
	ResultClassificationTotal *prometheus.CounterVec
	// InvoiceComputedTotal counts invoice computations by entry point.
	InvoiceComputedTotal *prometheus.CounterVec
	// AmountWordsOverflowTotal counts amounts too large to spell out.
	AmountWordsOverflowTotal prometheus.Counter
	// CatalogCacheTotal counts catalog cache lookups by result (hit, miss, error).
	CatalogCacheTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers lab-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		rangeTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "range_resolution_total",
			Help:      "Reference range resolutions by matching rule.",
		}, []string{"rule"})
		classificationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_classification_total",
			Help:      "Result classifications by status.",
		}, []string{"status"})
		invoiceTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_computed_total",
			Help:      "Invoice computations by source.",
		}, []string{"source"})
		overflow := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "amount_words_overflow_total",
			Help:      "Amounts rejected by the words converter as too large.",
		})
		cacheTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_total",
			Help:      "Catalog cache lookups by result.",
		}, []string{"result"})

		RangeResolutionTotal = registerCounterVec(reg, rangeTotal)
		ResultClassificationTotal = registerCounterVec(reg, classificationTotal)
		InvoiceComputedTotal = registerCounterVec(reg, invoiceTotal)
		CatalogCacheTotal = registerCounterVec(reg, cacheTotal)
		mustRegisterCollector(reg, overflow, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				overflow = v
			}
		})
		AmountWordsOverflowTotal = overflow
	})
}

// ObserveRangeResolution records the rule that selected a reference range. No-op until registered.
func ObserveRangeResolution(rule string) {
	if RangeResolutionTotal != nil {
		RangeResolutionTotal.WithLabelValues(rule).Inc()
	}
}

// ObserveClassification records a result status; the empty status is reported as "indeterminate".
func ObserveClassification(status string) {
	if ResultClassificationTotal == nil {
		return
	}
	if status == "" {
		status = "indeterminate"
	}
	ResultClassificationTotal.WithLabelValues(status).Inc()
}

// ObserveInvoice records an invoice computation from source.
func ObserveInvoice(source string) {
	if InvoiceComputedTotal != nil {
		InvoiceComputedTotal.WithLabelValues(source).Inc()
	}
}

// ObserveWordsOverflow records an amount that could not be spelled out.
func ObserveWordsOverflow() {
	if AmountWordsOverflowTotal != nil {
		AmountWordsOverflowTotal.Inc()
	}
}

// ObserveCache records a catalog cache lookup result.
func ObserveCache(result string) {
	if CatalogCacheTotal != nil {
		CatalogCacheTotal.WithLabelValues(result).Inc()
	}
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec) *prometheus.CounterVec {
	mustRegisterCollector(reg, vec, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			vec = v
		}
	})
	return vec
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
