package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Analytics *AnalyticsManager
}

// Passing a nil db gives a manager whose
// analytics calls do nothing
func NewDbManager(db DBTX) DbManager {
	if db == nil {
		return DbManager{}
	}
	return DbManager{
		Analytics: NewAnalyticsManager(New(db)),
	}
}
