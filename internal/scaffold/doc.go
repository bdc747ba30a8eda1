// Package scaffold creates new app directories from embedded templates. It
// powers the "openapps new" command, producing a manifest and entry page that
// already satisfy the directory contracts.
package scaffold
