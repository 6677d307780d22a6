package version

// Version is the application version, bumped on release.
const Version = "1.0.0"
