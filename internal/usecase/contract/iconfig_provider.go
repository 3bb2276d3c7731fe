package usecasecontract

import "time"

// IConfigProvider exposes the configuration values the usecases depend on.
type IConfigProvider interface {
	GetListCacheTTL() time.Duration
	GetDetailCacheTTL() time.Duration
	GetViewDedupWindow() time.Duration
}
