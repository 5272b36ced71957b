// package tasks drives brief generation cycles.
//
// The core type is [BriefEngine]. [BriefEngine.Run] validates an idea, calls the generator (buffered or
// streamed), and reports progress through a channel so the CLI and TUI can render it without blocking
// the cycle. [BriefEngine.Batch] runs several ideas one after another under a rate limit and writes an
// export per brief plus a manifest.
//
// Progress sends never block: when the channel is full the update is dropped. Streaming updates carry
// the whole accumulated text, so a dropped update never loses text, and the final brief is always the
// return value of Run rather than a channel message.
package tasks
