/*
posemirror overlays a horizontally mirrored skeleton of a detected human
pose next to the original pose, frame by frame, so a solo dancer can
compare their movement against its mirror image in real time.

The root package holds the landmark schema, the static skeletal
connection graph and the pure mirror transform.  Drawing lives in the
render package, per-frame orchestration in compose, the pose landmark
service client in detect, and the video pipeline (sources, sinks,
driver) in stream.

See the cmd/posemirror binary for usage against a video file or webcam.
*/
package posemirror
