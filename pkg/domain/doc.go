/*
Package domain contains the core data model of the cursor session store.

It defines the persisted entities and the error taxonomy shared by every backend.
This package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Entry: The last known cursor position of one document, plus its update time.
  - Table: The full document path -> Entry mapping. It is the unit of load and save.
  - Timestamp: A wall-clock instant encoded as "YYYY-MM-DD HH:MM:SS.ffffff".
*/
package domain
