// Package ports holds the interfaces the layers meet at. The application
// implements the service ports for the HTTP handlers; outbound adapters
// such as the email directories and the signup stores implement the client
// ports the application and the domain factories depend on.
package ports
