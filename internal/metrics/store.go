package metrics

import (
	"time"
)

// RecordStoreRead records a locked store read
func (m *Metrics) RecordStoreRead(store string, duration time.Duration) {
	m.safeExecute("RecordStoreRead", func() {
		m.StoreReadDuration.WithLabelValues(store).Observe(duration.Seconds())
	})
}

// RecordStoreWrite records a locked store write
func (m *Metrics) RecordStoreWrite(store string, duration time.Duration) {
	m.safeExecute("RecordStoreWrite", func() {
		m.StoreWriteDuration.WithLabelValues(store).Observe(duration.Seconds())
	})
}

// RecordLockWait records time spent acquiring the store lock
func (m *Metrics) RecordLockWait(duration time.Duration) {
	m.safeExecute("RecordLockWait", func() {
		m.LockWaitDuration.Observe(duration.Seconds())
	})
}

// RecordLockRetry records one lock acquisition retry
func (m *Metrics) RecordLockRetry() {
	m.safeExecute("RecordLockRetry", func() {
		m.LockRetriesTotal.Inc()
	})
}

// RecordLockTimeout records an exhausted lock acquisition
func (m *Metrics) RecordLockTimeout() {
	m.safeExecute("RecordLockTimeout", func() {
		m.LockTimeoutsTotal.Inc()
	})
}

// RecordStoreError records a failed store operation
func (m *Metrics) RecordStoreError(store, operation string) {
	m.safeExecute("RecordStoreError", func() {
		m.StoreErrors.WithLabelValues(store, operation).Inc()
	})
}

// RecordExternalFetch records an external asset download attempt
func (m *Metrics) RecordExternalFetch(kind string, duration time.Duration, err error) {
	m.safeExecute("RecordExternalFetch", func() {
		result := "success"
		if err != nil {
			result = "error"
			m.ExternalFetchErrors.Inc()
		}
		m.ExternalFetchTotal.WithLabelValues(kind, result).Inc()
		m.ExternalFetchDuration.Observe(duration.Seconds())
	})
}
