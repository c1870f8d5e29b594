// Package builtins contains all built-in hooks.
// Import this package to register them via their init() functions.
package builtins
