// Package tasks runs multi-request playlist jobs on top of the catalog client with progress reporting.
//
// # Operations
//
//  1. [PlaylistEngine.FetchPlaylist] : a playlist with every page of its items
//     - Reads the first page embedded in the playlist object
//     - Follows next links with limit 100 until the paging object is exhausted
//
//  2. [PlaylistEngine.BulkExport] : many playlists written to one directory
//     - A pool of workers fetch and write playlists concurrently
//     - Every request waits on a shared rate limiter
//     - Failures are collected per playlist and a manifest is written at the end
//
// # Progress Reporting
//
// Operations accept a [ProgressUpdate] channel. Sends never block: an update is dropped
// when the channel is full, and a nil channel disables reporting.
package tasks
