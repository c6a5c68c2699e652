// Package credentials defines the pluggable username/password verification
// port used by the session sign-in flow.
//
// The session core depends only on the Verifier interface and the Principal
// it returns. DirectoryVerifier is the standard implementation: it looks the
// user up in a UserDirectory and checks the password against the stored
// bcrypt hash.
//
// # Usage
//
//	directory, err := credentialspg.New(pool) // integration/credentials/pg
//	if err != nil {
//		log.Fatal(err)
//	}
//	verifier, err := credentials.NewDirectoryVerifier(directory)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	principal, err := verifier.Verify(ctx, "alice", "s3cret")
//	if errors.Is(err, credentials.ErrBadCredentials) {
//		// unknown user or wrong password, deliberately indistinguishable
//	}
//
// # Password Hashes
//
// HashPassword produces the bcrypt hash a directory should store:
//
//	hash, err := credentials.HashPassword("s3cret")
//
// Bcrypt limits passwords to 72 bytes; longer inputs fail hashing.
package credentials
