package tutorserver

var Version = "v0.0.1"
