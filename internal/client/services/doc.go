// Package services contains the application services of the gophnotes
// client: the NoteStore that owns notes and folders, search, the editor save
// path, dashboard analytics and the local sign-in stub.
//
// Services depend on the blobs.Repository port only; the backend is chosen
// by the storage package.
package services
