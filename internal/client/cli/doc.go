// Package cli provides the interactive tailorhub terminal client.
//
// App wires the client services (session, cart, catalogs, orders, profile,
// uploads) to a read-eval-print loop. Typical flow: restore the previous
// session, then dispatch user commands until "exit" or EOF.
//
// Key features:
//   - register / login / logout / whoami
//   - browse fabrics, shops and tailors with k=v filters and sort keys
//   - cart maintenance and checkout
//   - orders, profile and saved addresses
//   - inquiries to tailors, image uploads
//   - a role-specific dashboard for customers, tailors and shop owners
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
