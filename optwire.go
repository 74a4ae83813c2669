package optwire

// Specifies optwire version.
const Version = "1.0.0"
