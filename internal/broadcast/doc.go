// Package broadcast posts a reminder comment to every open issue carrying a
// label. Pull requests returned by the issues listing are skipped.
package broadcast
