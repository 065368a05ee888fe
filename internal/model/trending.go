package model

// PlatformReddit tags items produced by the Reddit proxy
const PlatformReddit = "reddit"

// ThumbnailPlaceholder is emitted when the upstream has no usable image URL
const ThumbnailPlaceholder = "icon-comment"

type TrendingItem struct {
	ID         string     `json:"id"`
	Platform   string     `json:"platform"`
	Title      string     `json:"title"`
	Creator    string     `json:"creator"`
	Subreddit  string     `json:"subreddit"`
	Views      string     `json:"views"`
	Category   string     `json:"category"`
	URL        string     `json:"url"`
	Created    float64    `json:"created"`
	Thumbnail  string     `json:"thumbnail"`
	Trending   bool       `json:"trending"`
	Statistics Statistics `json:"statistics"`
}

type Statistics struct {
	Upvotes  int     `json:"upvotes"`
	Comments int     `json:"comments"`
	Ratio    float64 `json:"ratio"`
}

type PageInfo struct {
	TotalResults int `json:"totalResults"`
}

// TrendingResponse is the success envelope returned by the proxy
type TrendingResponse struct {
	Items         []TrendingItem `json:"items"`
	NextPageToken *string        `json:"nextPageToken"`
	PageInfo      PageInfo       `json:"pageInfo"`
}

// TrendingError is the failure envelope returned by the proxy
type TrendingError struct {
	Error         string         `json:"error"`
	Items         []TrendingItem `json:"items"`
	NextPageToken *string        `json:"nextPageToken"`
}

// NewTrendingError builds a failure envelope with an empty item list
func NewTrendingError(message string) TrendingError {
	return TrendingError{
		Error: message,
		Items: []TrendingItem{},
	}
}
