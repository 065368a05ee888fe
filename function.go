package cloudfunctions

import (
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/socialspy/internal/transport/server"
)

// Registered Cloud Function targets
const (
	FetchRedditTarget      = "FetchReddit"
	SnapshotTrendingTarget = "SnapshotTrending"
)

func init() {
	functionTarget := os.Getenv("FUNCTION_TARGET")
	if functionTarget == "" {
		functionTarget = FetchRedditTarget
	}

	log.Printf("✅ Registering function: %s", functionTarget)

	switch functionTarget {
	case SnapshotTrendingTarget:
		functions.HTTP(functionTarget, server.HandleSnapshot)
	default:
		functions.HTTP(functionTarget, server.HandleRequest)
	}
}
