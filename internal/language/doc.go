// Package language infers language and region tags from ROM filename stems.
//
// Detection is purely textual: an ordered table maps each tag to a list of
// alternative token patterns matched case-insensitively against the raw stem,
// bracketed release conventions included. A stem can activate several tags at
// once (a Multi5 release, or simultaneous USA and Europe tokens); no ranking
// is implied by the result.
//
// The reserved Unknown tag never comes out of Detect. It exists for report
// aggregation, where files with an empty tag set are counted under a bucket
// of their own instead of being dropped.
package language
