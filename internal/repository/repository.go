package repository

// postgres unique violation error code
const pgErrUniqueViolationCode = "23505"
