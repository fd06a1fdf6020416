package api

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/shotam27/NoGambleMonsterBattle/internal/version"
)

// VersionInfo is the payload of the version route, also probed by the
// healthcheck binary.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"go_version"`
}

func currentVersion() VersionInfo {
	return VersionInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		Date:      version.Date,
		Dirty:     version.Dirty == "true",
		GoVersion: runtime.Version(),
	}
}

// Version returns build metadata injected with -ldflags.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, currentVersion())
}
