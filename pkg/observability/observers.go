package observability

import "time"

// StorageObserver receives store operation outcomes
type StorageObserver interface {
	ObserveStorageOperation(operation string, duration time.Duration, err error)
}

// AuthObserver receives register/login outcomes and guard rejections
type AuthObserver interface {
	ObserveAuthAttempt(operation, outcome string)
	ObserveAuthRejection(reason string)
}

// StorageObservers fans a storage event out to every element
type StorageObservers []StorageObserver

func (o StorageObservers) ObserveStorageOperation(operation string, duration time.Duration, err error) {
	for _, obs := range o {
		obs.ObserveStorageOperation(operation, duration, err)
	}
}

// AuthObservers fans an auth event out to every element
type AuthObservers []AuthObserver

func (o AuthObservers) ObserveAuthAttempt(operation, outcome string) {
	for _, obs := range o {
		obs.ObserveAuthAttempt(operation, outcome)
	}
}

func (o AuthObservers) ObserveAuthRejection(reason string) {
	for _, obs := range o {
		obs.ObserveAuthRejection(reason)
	}
}

var (
	_ StorageObserver = (*Metrics)(nil)
	_ StorageObserver = (*OTelMetrics)(nil)
	_ AuthObserver    = (*Metrics)(nil)
	_ AuthObserver    = (*OTelMetrics)(nil)
)
