package cursorkeep

// Version is the current release of cursorkeep.
const Version = "0.3.0"
