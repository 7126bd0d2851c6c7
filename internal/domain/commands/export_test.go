package commands

// LooksLikeVariable exports looksLikeVariable for testing.
var LooksLikeVariable = looksLikeVariable //nolint:gochecknoglobals // test export
