package main

// workspaceIDSessionKey stores the ID of the session's workspace in the Registry.
const workspaceIDSessionKey = "workspaceID"
