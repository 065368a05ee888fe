package trending

import (
	"fmt"
	"strings"

	"github.com/pep299/socialspy/internal/model"
	"github.com/pep299/socialspy/internal/reddit"
)

// ItemDefaults lists the values substituted for absent upstream fields
type ItemDefaults struct {
	Title     string
	Creator   string
	Category  string
	Views     string
	Thumbnail string
	LinkBase  string
}

// RedditDefaults is the defaults table for Reddit posts
var RedditDefaults = ItemDefaults{
	Title:     "Untitled",
	Creator:   "Unknown",
	Category:  "general",
	Views:     "N/A",
	Thumbnail: model.ThumbnailPlaceholder,
	LinkBase:  "https://reddit.com",
}

// Normalize maps an upstream listing to the proxy envelope.
// Children keep their upstream order and each produces exactly one item.
func Normalize(listing *reddit.Listing, defaults ItemDefaults) *model.TrendingResponse {
	resp := &model.TrendingResponse{
		Items: []model.TrendingItem{},
	}
	if listing == nil {
		return resp
	}

	resp.Items = make([]model.TrendingItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		resp.Items = append(resp.Items, NormalizePost(child.Data, defaults))
	}

	if listing.Data.After != nil && *listing.Data.After != "" {
		after := *listing.Data.After
		resp.NextPageToken = &after
	}
	if listing.Data.Dist > 0 {
		resp.PageInfo.TotalResults = listing.Data.Dist
	}

	return resp
}

// NormalizePost maps a single post, applying defaults
func NormalizePost(post reddit.Post, defaults ItemDefaults) model.TrendingItem {
	views := defaults.Views
	if post.Score != 0 {
		views = fmt.Sprintf("%d upvotes", post.Score)
	}

	thumbnail := defaults.Thumbnail
	if strings.HasPrefix(post.Thumbnail, "http") {
		thumbnail = post.Thumbnail
	}

	return model.TrendingItem{
		ID:        post.ID,
		Platform:  model.PlatformReddit,
		Title:     orDefault(post.Title, defaults.Title),
		Creator:   orDefault(post.Author, defaults.Creator),
		Subreddit: post.SubredditNamePrefixed,
		Views:     views,
		Category:  orDefault(post.Subreddit, defaults.Category),
		URL:       defaults.LinkBase + post.Permalink,
		Created:   post.CreatedUTC,
		Thumbnail: thumbnail,
		Trending:  true,
		Statistics: model.Statistics{
			Upvotes:  nonNegative(post.Ups),
			Comments: nonNegative(post.NumComments),
			Ratio:    clampRatio(post.UpvoteRatio),
		},
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
