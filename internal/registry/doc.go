// Package registry persists which projects are tracked, which environments
// each project owns, and which remotes those environments sync against.
//
// The registry is a single TOML document under the totara config directory:
//
//	[[projects]]
//	id = "4c0e..."
//	root = "/home/user/app"
//
//	  [[projects.environments]]
//	  name = "prod"
//	  file = ".env.production"
//
//	    [projects.environments.remote]
//	    remote = "company-s3"
//	    key = "4c0e.../prod.env"
//
//	[[remotes]]
//	name = "company-s3"
//	backend = "s3"
//
//	  [remotes.params]
//	  bucket = "acme-secrets"
//	  region = "us-east-1"
//
// Commands load the full document, mutate it in memory, and save it back
// atomically (temp file + rename). Remote bindings reference remotes by
// name; deleting a remote that is still referenced is an error, not a
// cascade.
package registry
