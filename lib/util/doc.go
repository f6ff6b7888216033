// Package util provides small numeric helpers shared by the library packages.
package util
