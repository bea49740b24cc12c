// Package cert models remote electronic signature attempts. A Signature
// tracks one attempt through the vendor's three-phase flow (request, poll,
// verify) and ends in exactly one terminal state; vendor outcome codes are
// normalized through StateFromOutcomeCode so the rest of the application
// never handles raw vendor integers.
package cert
