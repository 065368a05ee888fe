package summarizer

import "regexp"

// videoIDPattern matches watch, short, embed and /v/ links and captures
// the 11 character identifier
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractVideoID returns the video identifier in url, or "" if none
func ExtractVideoID(url string) string {
	match := videoIDPattern.FindStringSubmatch(url)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// ThumbnailURL returns the preview image for a video id, or "" for none
func ThumbnailURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}
