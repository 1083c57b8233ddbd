package handlers

import (
	"net/http"

	internalsettings "github.com/brandbridge/bridgeboard/internal/settings"
	"github.com/gin-gonic/gin"
)

// publicConfigResponse is the response payload for public config.
type publicConfigResponse struct {
	SiteName         string `json:"site_name"`
	RegistrationOpen bool   `json:"registration_open"`
}

// GetPublicConfig returns public configuration for the front UI.
func GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, publicConfigResponse{
		SiteName:         internalsettings.String(internalsettings.SiteNameKey, internalsettings.DefaultSiteName),
		RegistrationOpen: registrationOpen(),
	})
}

func registrationOpen() bool {
	return internalsettings.Bool(internalsettings.RegistrationOpenKey, internalsettings.DefaultRegistrationOpen)
}
