// internal/workers/data-access/refresh-catalog/models.go
package refreshcatalog

type Input struct {
	InvalidateCache bool `json:"invalidateCache,omitempty"`
}

type Output struct {
	Profiles         int   `json:"profiles"`
	Ideas            int   `json:"ideas"`
	Offers           int   `json:"offers"`
	CacheInvalidated bool  `json:"cacheInvalidated"`
	LoadTime         int64 `json:"loadTime"` // milliseconds
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"invalidateCache": {"type": "boolean"}
	}
}`
