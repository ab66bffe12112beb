// Command api runs the CRUD API server.
//
//	api serve [--migrate]   start the HTTP server
//	api migrate             apply database migrations and exit
package main

func main() {
	Execute()
}
