package mavenmapper

// Version is the current version of maven-mapper
const Version = "0.3.0"
