package parameter

// SpawnEdgeOffset places wave spawns just outside the visible arena
const SpawnEdgeOffset = 50.0
