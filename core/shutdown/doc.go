// Package shutdown coordinates graceful process termination: drain
// in-flight connections if a server handle is available, but exit within
// a bounded timeout regardless of drain outcome. A stuck connection can
// never keep the process alive, and a drain completing after the timeout
// already fired is silently ignored.
package shutdown
