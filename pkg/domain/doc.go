/*
Package domain contains the core models shared by the envcheck tooling.

It defines what an environment variable declaration looks like once it has
been read from any schema source, what an entry in a .env file looks like,
and the report produced when the two are compared. This package is kept
pure and free of I/O.

# Key Entities

  - Variable: One declared environment variable (type, default, group, env type).
  - SchemaSource: Where a set of declarations was read from (Zod, Pydantic, YAML, Go).
  - EnvEntry: A single KEY=value line from a .env file.
  - Report: The outcome of checking env files against the declared variables.
*/
package domain
