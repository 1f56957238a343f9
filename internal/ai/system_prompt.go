package ai

// Fixed instruction reinforcing the "JSON array only" contract; the prompt
// body repeats it at the end because models drift without both.
const generateTasksSystemPrompt = "You are a helpful assistant that generates engaging tasks to combat boredom. Always respond with valid JSON arrays only."
