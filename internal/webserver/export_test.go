package webserver

// SetListenFunc replaces the call that binds the port
func (s *Server) SetListenFunc(listen func(addr string) error) {
	s.listen = listen
}
