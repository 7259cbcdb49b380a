// Package framework runs the long-lived activities of a robot process
// side by side and collects their errors.
package framework
