package main

import (
	"log"
	"os"

	"httpfromtcp/internal/headers"
	"httpfromtcp/internal/request"
	"httpfromtcp/internal/response"
	"httpfromtcp/server"
)

const port = 42069

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	srv, err := server.New(server.Config{
		Host:       "0.0.0.0",
		Port:       port,
		MaxThreads: 8,
		MaxLoad:    500,
		Logger:     logger,
	}, demoHandler)
	if err != nil {
		logger.Fatalf("server: %v", err)
	}
	defer srv.Close()

	logger.Printf("listening on port %d", port)
	sig := srv.Run()
	logger.Printf("stopped (signal %d)", sig)
}

func demoHandler(req *request.Request) *response.Response {
	switch req.URI.AbsolutePath() {
	case "/yourproblem":
		return response.New(response.StatusBadRequest, headers.New(), []byte(yourProblemBody), "text/html")
	case "/myproblem":
		return response.New(response.StatusInternalServerError, headers.New(), []byte(myProblemBody), "text/html")
	default:
		return response.New(response.StatusOK, headers.New(), []byte(okBody), "text/html")
	}
}

const yourProblemBody = `<html>
  <head><title>400 Bad Request</title></head>
  <body>
    <h1>Bad Request</h1>
    <p>Your request honestly just didn't make any sense to me.</p>
  </body>
</html>`

const myProblemBody = `<html>
  <head><title>500 Internal Server Error</title></head>
  <body>
    <h1>Internal Server Error</h1>
    <p>Okay, you know what, this one is on me.</p>
  </body>
</html>`

const okBody = `<html>
  <head><title>200 OK</title></head>
  <body>
    <h1>Success!</h1>
    <p>Your request was an absolute banger.</p>
  </body>
</html>`
