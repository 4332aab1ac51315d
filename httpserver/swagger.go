package httpserver

import (
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "movieinfo/docs"
)

// @title movieinfo API
// @version 1.0
// @description Movie and genre catalog.
// @BasePath /

func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}
