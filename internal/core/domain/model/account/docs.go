// Package account models users and their freight roles. Every user is
// either a sender or a driver; sender users may share order ownership
// through a company's sender role. Passwords are stored as bcrypt hashes.
package account
