// Package files locates survey workbooks and their parquet caches on disk.
//
// The survey office delivers one workbook per graduating year, named
// "Data SKPG <year>.xlsx". Discovery scans the data directory for these
// files, pairs each with its parquet cache, and reports whether the cache
// is fresh, stale, or missing relative to the workbook.
//
// Example usage:
//
//	discovery := files.NewDiscovery(cfg.GetDataDir())
//	sources, err := discovery.FindYearFiles()
//	for _, src := range sources {
//	    if src.CacheStale() {
//	        // Re-convert the workbook before reading.
//	    }
//	}
package files
