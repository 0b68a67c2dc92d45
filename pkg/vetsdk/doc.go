// Package vetsdk holds the wire types of the veterinary clinic API and a
// small client for it.
//
// Typical use:
//
//	c := vetsdk.NewClient("http://localhost:8080")
//	s, err := c.Authenticate(ctx, "admin", "admin")
//	if err != nil {
//		return err
//	}
//	people, err := s.ListPeople(ctx)
//
// Errors returned by the server come back as *APIError so callers can
// branch on StatusCode.
package vetsdk
