package http

import (
	"github.com/gin-gonic/gin"
)

const (
	flashCookieName = "flash"
	cookieSecureKey = "cookie_secure"
)

// setFlash deja un mensaje de un solo uso para la proxima pagina. gin escapa
// el valor al escribir la cookie y lo desescapa al leerla.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookieName, message, 60, "/", "", c.GetBool(cookieSecureKey), true)
}

// popFlash lee y borra el mensaje pendiente.
func popFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookieName)
	if err != nil || message == "" {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", c.GetBool(cookieSecureKey), true)
	return message
}
